package agents

import "github.com/JaimeStill/agent-hub/pkg/openapi"

// spec holds OpenAPI operation definitions for the agents domain.
type spec struct {
	Create     *openapi.Operation
	List       *openapi.Operation
	Find       *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
	Search     *openapi.Operation
	ListTools  *openapi.Operation
	AddTool    *openapi.Operation
	RemoveTool *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all agent endpoints.
var Spec = spec{
	Create: &openapi.Operation{
		Summary:     "Create agent",
		Description: "Validates and stores a new agent with its attached tools",
		RequestBody: openapi.RequestBodyJSON("CreateAgentCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Agent created", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	List: &openapi.Operation{
		Summary:     "List agents",
		Description: "Returns a paginated list of agents with optional filtering and sorting",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
			openapi.QueryParam("search", "string", "Search query (matches name and description)", false),
			openapi.QueryParam("sort", "string", "Sort field (Name, CreatedAt, UpdatedAt). Prefix with - for descending", false),
			openapi.QueryParam("name", "string", "Filter by agent name (contains)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of agents", "AgentPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary: "Get agent by ID",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update agent",
		Description: "Applies a partial update; omitted fields are unchanged",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("UpdateAgentCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Agent updated", "Agent"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:     "Delete agent",
		Description: "Removes an agent and its chat transcript",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Agent deleted"},
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Search: &openapi.Operation{
		Summary:     "Search agents",
		Description: "Search agents with pagination via POST body",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("name", "string", "Filter by agent name (contains)", false),
		},
		RequestBody: openapi.RequestBodyJSON("PageRequest", false),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated search results", "AgentPageResult"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	ListTools: &openapi.Operation{
		Summary: "List attached tools",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Attached tools", "ToolEntry"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	AddTool: &openapi.Operation{
		Summary:     "Attach tool",
		Description: "Attaches a registry tool; config is validated against the tool schema",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
		},
		RequestBody: openapi.RequestBodyJSON("ToolEntry", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Tool attached", "ToolEntry"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	RemoveTool: &openapi.Operation{
		Summary: "Detach tool",
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Agent UUID"),
			openapi.StringPathParam("key", "Attached tool key"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Removed tool", "ToolEntry"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the agent domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Agent": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"tools":       {Type: "array", Items: openapi.SchemaRef("ToolEntry")},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"ToolEntry": {
			Type:     "object",
			Required: []string{"key"},
			Properties: map[string]*openapi.Schema{
				"key":     {Type: "string", Example: "slackNotifier"},
				"handler": {Type: "string", Description: "Handler serving this entry; defaults to key"},
				"config":  {Type: "object", Description: "Handler configuration"},
			},
		},
		"CreateAgentCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string", Example: "release-bot"},
				"description": {Type: "string"},
				"tools":       {Type: "array", Items: openapi.SchemaRef("ToolEntry")},
			},
		},
		"UpdateAgentCommand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"tools":       {Type: "array", Items: openapi.SchemaRef("ToolEntry")},
			},
		},
		"PageRequest": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":       {Type: "integer"},
				"page_size":  {Type: "integer"},
				"search":     {Type: "string"},
				"sort_by":    {Type: "string"},
				"descending": {Type: "boolean"},
			},
		},
		"AgentPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        {Type: "array", Items: openapi.SchemaRef("Agent")},
				"total":       {Type: "integer", Description: "Total number of results"},
				"page":        {Type: "integer", Description: "Current page number"},
				"page_size":   {Type: "integer", Description: "Results per page"},
				"total_pages": {Type: "integer", Description: "Total number of pages"},
			},
		},
	}
}
