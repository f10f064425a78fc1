package metalogs

import "github.com/JaimeStill/agent-hub/pkg/openapi"

type spec struct {
	List        *openapi.Operation
	ListByAgent *openapi.Operation
}

// Spec contains OpenAPI operation definitions for the audit log.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List meta logs",
		Description: "Returns a paginated audit log across all agents, including agents since deleted",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches query and response)", false),
			openapi.QueryParam("sort", "string", "Sort field. Prefix with - for descending", false),
			openapi.QueryParam("agent_id", "string", "Filter by agent UUID", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated audit entries", "MetaLogPageResult"),
		},
	},
	ListByAgent: &openapi.Operation{
		Summary: "List meta logs for agent",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Audit entries, oldest first", "MetaLogEntry"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"MetaLogEntry": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "integer"},
				"agent_id":  {Type: "string", Format: "uuid"},
				"query":     {Type: "string"},
				"response":  {Type: "string"},
				"metadata":  openapi.SchemaRef("MetaLogMetadata"),
				"timestamp": {Type: "string", Format: "date-time"},
			},
		},
		"MetaLogMetadata": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"raw":          {Type: "string", Description: "Primary LLM reply"},
				"tool_key":     {Type: "string"},
				"tool_handler": {Type: "string"},
				"tool_args":    {Type: "object"},
				"tool_result":  {Type: "string"},
				"tool_error":   {Type: "string"},
				"summarized":   {Type: "boolean"},
			},
		},
		"MetaLogPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("MetaLogEntry")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
