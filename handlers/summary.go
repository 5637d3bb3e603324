// handlers/summary.go - Read-only HTML introspection pages (debug tooling)
package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var tableNameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const summaryIndexHTML = `<!DOCTYPE html>
<html>
<head><title>Eyehunt Summary</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
h2 { margin-top: 1.5em; }
.err { color: #b00; }
</style>
</head>
<body>
<h1>Eyehunt Summary</h1>
<h2>API Routes</h2>
{{range .RouteGroups}}
<h3>{{.Tag}}</h3>
<table>
<tr><th>Method</th><th>Path</th></tr>
{{range .Routes}}<tr><td>{{.Method}}</td><td>{{.Path}}</td></tr>
{{end}}
</table>
{{end}}
<h2>Tables</h2>
{{if .TableError}}<p class="err">{{.TableError}}</p>{{end}}
<ul>
{{range .Tables}}<li><a href="/summary/tables/{{.}}">{{.}}</a></li>
{{end}}
</ul>
</body>
</html>`

const summaryTableHTML = `<!DOCTYPE html>
<html>
<head><title>{{.Name}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 4px 10px; text-align: left; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p><a href="/summary">&larr; back</a></p>
<table>
<tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}
</table>
</body>
</html>`

var (
	summaryIndexTmpl = template.Must(template.New("summary_index").Parse(summaryIndexHTML))
	summaryTableTmpl = template.Must(template.New("summary_table").Parse(summaryTableHTML))
)

type routeGroup struct {
	Tag    string
	Routes []routeEntry
}

type routeEntry struct {
	Method string
	Path   string
}

// SummaryIndex lists the registered API routes and public tables.
// GET /summary
func SummaryIndex(c *fiber.Ctx) error {
	grouped := map[string][]routeEntry{}
	for _, route := range c.App().GetRoutes(true) {
		if route.Method == "HEAD" || route.Path == "/" || strings.HasPrefix(route.Path, "/summary") {
			continue
		}
		segments := strings.SplitN(strings.TrimPrefix(route.Path, "/"), "/", 2)
		tag := segments[0]
		grouped[tag] = append(grouped[tag], routeEntry{Method: route.Method, Path: route.Path})
	}

	groups := make([]routeGroup, 0, len(grouped))
	for tag, routes := range grouped {
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path != routes[j].Path {
				return routes[i].Path < routes[j].Path
			}
			return routes[i].Method < routes[j].Method
		})
		groups = append(groups, routeGroup{Tag: tag, Routes: routes})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Tag < groups[j].Tag })

	tables, tableError := listTableNames()

	var buf bytes.Buffer
	if err := summaryIndexTmpl.Execute(&buf, fiber.Map{
		"RouteGroups": groups,
		"Tables":      tables,
		"TableError":  tableError,
	}); err != nil {
		return serviceError(c, err)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}

func listTableNames() ([]string, string) {
	var names []string
	err := dbConn.Raw(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`).Scan(&names).Error
	if err != nil {
		return nil, fmt.Sprintf("DB error: %v", err)
	}
	return names, ""
}

// SummaryTable shows the first rows of one table.
// GET /summary/tables/:name
func SummaryTable(c *fiber.Ctx) error {
	name := c.Params("name")
	if !tableNameRe.MatchString(name) {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Table not found"})
	}

	var rows []map[string]interface{}
	if err := dbConn.Raw("SELECT * FROM " + name + " LIMIT 50").Find(&rows).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Table not found"})
	}

	columns := []string{}
	if len(rows) > 0 {
		for column := range rows[0] {
			columns = append(columns, column)
		}
		sort.Strings(columns)
	}

	rendered := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, fmt.Sprintf("%v", row[column]))
		}
		rendered = append(rendered, cells)
	}

	var buf bytes.Buffer
	if err := summaryTableTmpl.Execute(&buf, fiber.Map{
		"Name":    name,
		"Columns": columns,
		"Rows":    rendered,
	}); err != nil {
		return serviceError(c, err)
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Send(buf.Bytes())
}
