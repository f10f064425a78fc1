package registry

import "github.com/JaimeStill/agent-hub/pkg/openapi"

type spec struct {
	List *openapi.Operation
	Find *openapi.Operation
}

// Spec contains OpenAPI operation definitions for the tool catalog.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List tools",
		Description: "Returns every tool an agent may attach, with its config schema",
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Tool catalog", "ToolMetadata"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Get tool by key",
		Parameters: []*openapi.Parameter{
			openapi.StringPathParam("key", "Registry key"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Tool metadata", "ToolMetadata"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ToolMetadata": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"key":           {Type: "string", Example: "githubSummarizer"},
				"name":          {Type: "string"},
				"description":   {Type: "string"},
				"config_schema": {Type: "object", Description: "JSON Schema of the tool config"},
			},
		},
	}
}
