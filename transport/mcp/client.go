package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wildgrid/patrolsim/patrol/engine"
	"github.com/wildgrid/patrolsim/patrol/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ranger Patrol Planner",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ranger Patrol Planner - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PURPOSE:
Plan daily patrol routes for rangers across a wildlife reserve grid. Each
cell carries a poaching risk score, optional animal presence, and terrain.
Rangers walk greedily toward high-value cells while shared coverage spreads
them apart.

AVAILABLE TOOLS:
- create_plan: Compute patrol routes for a scenario or raw parameters
- get_plan: Get full plan state (routes, coverage, stats)
- list_plans: List all stored plans
- delete_plan: Remove a plan
- recompute_plan: Re-run the planner with a fresh or chosen seed
- plan_routes: Per-ranger paths for a plan
- plan_coverage: ASCII coverage map showing visit counts
- plan_stats: Before/after risk statistics
- list_scenarios: List available reserve scenarios
- get_scenario: Get a scenario's layout and risk map
- patrol_instructions: Detailed explanation of the planning model`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Plan management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_plan",
		Description: "Create a new patrol plan from a scenario or explicit parameters",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the scenario to plan for (optional)",
				},
				"ranger_count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of rangers to route (overrides scenario default)",
				},
				"max_steps": map[string]interface{}{
					"type":        "integer",
					"description": "Step budget per ranger (overrides scenario default)",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for reproducible plans (optional)",
				},
			},
		},
	}, c.handleCreatePlan)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_plans",
		Description: "List all stored patrol plans",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPlans)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_plan",
		Description: "Get full state of a specific plan",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "Plan ID to retrieve",
				},
			},
			Required: []string{"plan_id"},
		},
	}, c.handleGetPlan)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_plan",
		Description: "Delete a stored plan",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "Plan ID to delete",
				},
			},
			Required: []string{"plan_id"},
		},
	}, c.handleDeletePlan)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "recompute_plan",
		Description: "Re-run the planner for an existing plan. Same parameters, new seed unless one is given.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "Plan ID to recompute",
				},
				"seed": map[string]interface{}{
					"type":        "integer",
					"description": "Random seed for the new computation (optional)",
				},
			},
			Required: []string{"plan_id"},
		},
	}, c.handleRecomputePlan)

	// Plan data
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_routes",
		Description: "Get per-ranger patrol paths for a plan",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "Plan ID",
				},
			},
			Required: []string{"plan_id"},
		},
	}, c.handlePlanRoutes)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_coverage",
		Description: "Get an ASCII coverage map for a plan. Digits are visit counts, # marks blocked terrain.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "Plan ID",
				},
			},
			Required: []string{"plan_id"},
		},
	}, c.handlePlanCoverage)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_stats",
		Description: "Get before/after risk statistics for a plan",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"plan_id": map[string]interface{}{
					"type":        "string",
					"description": "Plan ID",
				},
			},
			Required: []string{"plan_id"},
		},
	}, c.handlePlanStats)

	// Scenarios
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List available reserve scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListScenarios)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_scenario",
		Description: "Get a scenario's terrain layout, risk map, and defaults",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Scenario name",
				},
			},
			Required: []string{"name"},
		},
	}, c.handleGetScenario)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "patrol_instructions",
		Description: "Get a detailed explanation of the planning model and how to read plan output",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handlePatrolInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreatePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	body := map[string]interface{}{}
	if scenarioID, _ := args["scenario_id"].(string); scenarioID != "" {
		body["scenario_id"] = scenarioID
	}
	if rangerCount, ok := args["ranger_count"].(float64); ok {
		body["ranger_count"] = int(rangerCount)
	}
	if maxSteps, ok := args["max_steps"].(float64); ok {
		body["max_steps"] = int(maxSteps)
	}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = int64(seed)
	}

	var plan service.PlanInfo
	err := c.apiCall("POST", "/api/plans", body, &plan)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatPlan(&plan)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPlans(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var plans []service.PlanInfo
	err := c.apiCall("GET", "/api/plans", nil, &plans)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Stored Plans (%d):\n\n", len(plans))
	for _, p := range plans {
		scenario := p.ScenarioID
		if scenario == "" {
			scenario = "custom"
		}
		result += fmt.Sprintf("- %s (Scenario: %s, Rangers: %d, Created: %s)\n",
			p.ID, scenario, p.RangerCount, p.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetPlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	planID, _ := args["plan_id"].(string)

	var plan service.PlanInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/plans/%s", planID), nil, &plan)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatPlan(&plan)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDeletePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	planID, _ := args["plan_id"].(string)

	err := c.apiCall("DELETE", fmt.Sprintf("/api/plans/%s", planID), nil, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Deleted plan %s", planID)), nil
}

func (c *Client) handleRecomputePlan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	planID, _ := args["plan_id"].(string)

	body := map[string]interface{}{}
	if seed, ok := args["seed"].(float64); ok {
		body["seed"] = int64(seed)
	}

	var plan service.PlanInfo
	err := c.apiCall("POST", fmt.Sprintf("/api/plans/%s/recompute", planID), body, &plan)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Recomputed.\n\n" + formatPlan(&plan)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlanRoutes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	planID, _ := args["plan_id"].(string)

	var routes []engine.Route
	err := c.apiCall("GET", fmt.Sprintf("/api/plans/%s/routes", planID), nil, &routes)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRoutes(routes)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlanCoverage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	planID, _ := args["plan_id"].(string)

	// Full plan fetch so the terrain map is available for the display
	var plan service.PlanInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/plans/%s", planID), nil, &plan)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatCoverageMap(plan.Params, plan.Result.Coverage)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePlanStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	planID, _ := args["plan_id"].(string)

	var stats engine.Stats
	err := c.apiCall("GET", fmt.Sprintf("/api/plans/%s/stats", planID), nil, &stats)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatStats(&stats)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var scenarios []service.ScenarioInfo
	err := c.apiCall("GET", "/api/scenarios", nil, &scenarios)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Scenarios:\n\n"
	for _, s := range scenarios {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: %dx%d, Rangers: %d, Steps: %d\n\n",
			s.Name, s.Description, s.GridSize, s.GridSize, s.RangerCount, s.MaxSteps)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	name, _ := args["name"].(string)

	var scenario engine.Scenario
	err := c.apiCall("GET", fmt.Sprintf("/api/scenarios/%s", name), nil, &scenario)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatScenario(&scenario)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePatrolInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Ranger Patrol Planner - Planning Model

PURPOSE:
Compute daily patrol routes for a team of rangers across a wildlife reserve
modeled as a square grid. The planner aims patrols at high-poaching-risk
cells and cells with animal presence, while spreading rangers apart.

GRID MODEL:
• Each cell has a poaching risk score in [0, 1]
• Cells may carry animal presence (a fixed bonus when scoring)
• Terrain is passable or blocked; blocked cells are never entered
• Movement is orthogonal only: up, down, left, right

ROUTE CONSTRUCTION:
Rangers are routed one at a time, in order. Each ranger:
1. Starts on a passable cell chosen uniformly at random
2. Repeatedly steps to the highest-scoring passable neighbor
3. Stops when the step budget runs out or no passable neighbor exists

CELL SCORING:
  score = (risk * 2 + animal_bonus) / (visits + 1)

where animal_bonus is 1 for cells with animals and visits counts every
prior visit by any ranger this planning run. The divisor makes visited
cells less attractive, so later rangers drift toward uncovered ground.
Ties go to the first direction in up, down, left, right order.

STATISTICS:
• before_risk: mean risk across the whole grid before patrols
• after_risk: mean risk after covered cells are reduced to 20% of
  their original risk
• risk_reduction: percent drop from before to after, rounded
• high_risk_coverage: percent of cells with risk >= 0.7 that at least
  one route visits ("100%" when there are none)

READING COVERAGE MAPS:
Digits are visit counts per cell (9+ shown as 9), '#' is blocked terrain,
'.' is an unvisited passable cell.

REPRODUCIBILITY:
Every plan records its seed. Recomputing with the same seed yields the
identical routes; omitting the seed draws a fresh one.

WORKFLOW:
1. list_scenarios to see available reserves
2. create_plan with a scenario_id (and optional ranger_count/max_steps)
3. plan_coverage and plan_stats to evaluate the result
4. recompute_plan to try a different random start assignment`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func formatPlan(plan *service.PlanInfo) string {
	scenario := plan.ScenarioID
	if scenario == "" {
		scenario = "custom"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Plan: %s\nScenario: %s\nSeed: %d\nCreated: %s\n",
		plan.ID, scenario, plan.Seed,
		plan.CreatedAt.Format("2006-01-02 15:04:05")))

	if plan.Params != nil {
		b.WriteString(fmt.Sprintf("Grid: %dx%d | Rangers: %d | Max steps: %d\n",
			plan.Params.GridSize, plan.Params.GridSize,
			plan.Params.RangerCount, plan.Params.MaxSteps))
	}

	if plan.Result != nil {
		b.WriteString("\n")
		b.WriteString(formatStats(&plan.Result.Stats))
		b.WriteString("\n")
		b.WriteString(formatRoutes(plan.Result.Routes))
		if plan.Params != nil {
			b.WriteString("\n")
			b.WriteString(formatCoverageMap(plan.Params, plan.Result.Coverage))
		}
	}

	return b.String()
}

func formatRoutes(routes []engine.Route) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Routes (%d rangers):\n", len(routes)))

	for _, route := range routes {
		b.WriteString(fmt.Sprintf("Ranger %d (%d cells): ", route.RangerID, len(route.Path)))
		for i, cell := range route.Path {
			if i > 0 {
				b.WriteString(" > ")
			}
			b.WriteString(fmt.Sprintf("(%d,%d)", cell.Row, cell.Col))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// formatCoverageMap renders visit counts as a character grid. Counts above
// nine collapse to 9 so each cell stays one character wide.
func formatCoverageMap(params *engine.Parameters, coverage [][]int) string {
	var b strings.Builder
	b.WriteString("Coverage map (digits = visits, # = blocked, . = unvisited):\n")

	for row := 0; row < len(coverage); row++ {
		for col := 0; col < len(coverage[row]); col++ {
			if params != nil && params.TerrainMap[row][col] == engine.TerrainImpassable {
				b.WriteString("#")
				continue
			}
			count := coverage[row][col]
			switch {
			case count == 0:
				b.WriteString(".")
			case count > 9:
				b.WriteString("9")
			default:
				b.WriteString(fmt.Sprintf("%d", count))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatStats(stats *engine.Stats) string {
	return fmt.Sprintf(`Statistics:
Before risk: %.4f
After risk: %.4f
Risk reduction: %s
High-risk coverage: %s
`, stats.BeforeRisk, stats.AfterRisk, stats.RiskReduction, stats.HighRiskCoverage)
}

func formatScenario(scenario *engine.Scenario) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Scenario: %s\n%s\nGrid: %dx%d | Rangers: %d | Max steps: %d\n\nLayout (. open, # blocked, A animals):\n",
		scenario.Name, scenario.Description,
		scenario.GridSize, scenario.GridSize,
		scenario.RangerCount, scenario.MaxSteps))

	for _, row := range scenario.Layout {
		b.WriteString(row)
		b.WriteString("\n")
	}

	b.WriteString("\nRisk map:\n")
	for _, row := range scenario.RiskMap {
		for col, risk := range row {
			if col > 0 {
				b.WriteString(" ")
			}
			b.WriteString(fmt.Sprintf("%.2f", risk))
		}
		b.WriteString("\n")
	}

	return b.String()
}
