package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/koustreak/dbmcp/internal/database"
	"github.com/koustreak/dbmcp/internal/format"
)

const sparqlPrefixes = `
    PREFIX owl: <http://www.w3.org/2002/07/owl#>
    PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>
    PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>`

// cannedQuery is a fixed SPASQL statement published as its own tool.
type cannedQuery struct {
	name        string
	description string
	query       string
}

var cannedQueries = []cannedQuery{
	{
		name: "sparql_get_entity_types",
		description: "This query retrieves all entity types in the RDF graph, along with their labels and comments if available. " +
			"It filters out blank nodes and ensures that only IRI types are returned. " +
			"The LIMIT clause is set to 100 to restrict the number of entity types returned.",
		query: `SELECT DISTINCT * FROM (
  SPARQL` + sparqlPrefixes + `
  SELECT ?o
  WHERE {
    GRAPH ?g {
      ?s a ?o .
      OPTIONAL { ?s rdfs:label ?label . FILTER (LANG(?label) = "en" || LANG(?label) = "") }
      OPTIONAL { ?s rdfs:comment ?comment . FILTER (LANG(?comment) = "en" || LANG(?comment) = "") }
      FILTER (isIRI(?o) && !isBlank(?o))
    }
  }
  LIMIT 100
) AS x`,
	},
	{
		name: "sparql_get_entity_types_detailed",
		description: "This query retrieves all entity types in the RDF graph, along with their labels and comments if available. " +
			"It filters out blank nodes and ensures that only IRI types are returned. " +
			"The LIMIT clause is set to 100 to restrict the number of entity types returned.",
		query: `SELECT * FROM (
  SPARQL` + sparqlPrefixes + `
  SELECT ?o, (SAMPLE(?label) AS ?label), (SAMPLE(?comment) AS ?comment)
  WHERE {
    GRAPH ?g {
      ?s a ?o .
      OPTIONAL { ?o rdfs:label ?label . FILTER (LANG(?label) = "en" || LANG(?label) = "") }
      OPTIONAL { ?o rdfs:comment ?comment . FILTER (LANG(?comment) = "en" || LANG(?comment) = "") }
      FILTER (isIRI(?o) && !isBlank(?o))
    }
  }
  GROUP BY ?o
  ORDER BY ?o
  LIMIT 20
) AS results`,
	},
	{
		name: "sparql_get_entity_types_samples",
		description: "This query retrieves samples of entities for each type in the RDF graph, along with their labels and counts. " +
			"It groups by entity type and orders the results by sample count in descending order. " +
			"Note: The LIMIT clause is set to 20 to restrict the number of entity types returned.",
		query: `SELECT * FROM (
  SPARQL` + sparqlPrefixes + `
  SELECT (SAMPLE(?s) AS ?sample), ?slabel, (COUNT(*) AS ?sampleCount), (?o AS ?entityType), ?olabel
  WHERE {
    GRAPH ?g {
      ?s a ?o .
      OPTIONAL { ?s rdfs:label ?slabel . FILTER (LANG(?slabel) = "en" || LANG(?slabel) = "") }
      FILTER (isIRI(?s) && !isBlank(?s))
      OPTIONAL { ?o rdfs:label ?olabel . FILTER (LANG(?olabel) = "en" || LANG(?olabel) = "") }
      FILTER (isIRI(?o) && !isBlank(?o))
    }
  }
  GROUP BY ?slabel ?o ?olabel
  ORDER BY DESC(?sampleCount) ?o ?slabel ?olabel
  LIMIT 20
) AS results`,
	},
	{
		name:        "sparql_get_ontologies",
		description: "This query retrieves all ontologies in the RDF graph, along with their labels and comments if available.",
		query: `SELECT * FROM (
  SPARQL` + sparqlPrefixes + `
  SELECT ?s, ?label, ?comment
  WHERE {
    GRAPH ?g {
      ?s a owl:Ontology .
      OPTIONAL { ?s rdfs:label ?label . FILTER (LANG(?label) = "en" || LANG(?label) = "") }
      OPTIONAL { ?s rdfs:comment ?comment . FILTER (LANG(?comment) = "en" || LANG(?comment) = "") }
      FILTER (isIRI(?o) && !isBlank(?o))
    }
  }
  LIMIT 100
) AS x`,
	},
}

// canned returns the handler for q. Canned tools behave exactly like
// query_database, failures included.
func (s *Server) canned(q cannedQuery) mcp.ToolHandlerFor[NoArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in NoArgs) (*mcp.CallToolResult, any, error) {
		return s.withConn(ctx, "query_database", overrides(in.User, in.Password, in.URL), func(ctx context.Context, conn *database.Conn) (string, error) {
			return s.render(ctx, conn, q.query, format.JSONLines, -1)
		})
	}
}
