package chatlogs

import "github.com/JaimeStill/agent-hub/pkg/openapi"

type spec struct {
	ListByAgent *openapi.Operation
}

var Spec = spec{
	ListByAgent: &openapi.Operation{
		Summary:     "Get chat transcript",
		Description: "Returns every turn for the agent, oldest first",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Transcript entries", "ChatLogEntry"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ChatLogEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "integer"},
				"agent_id":  {Type: "string", Format: "uuid"},
				"role":      {Type: "string", Enum: []string{"user", "agent"}},
				"message":   {Type: "string"},
				"timestamp": {Type: "string", Format: "date-time"},
			},
		},
	}
}
