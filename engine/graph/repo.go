package graph

import (
	"github.com/PartDeskAI/partdesk-mvp/pkg/repo"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// newPartRepo creates a Neo4j-backed repository for Part nodes keyed by
// part number.
func newPartRepo(driver neo4j.DriverWithContext) *repo.Neo4jRepo[Part, string] {
	return repo.NewNeo4jRepo[Part, string](
		driver,
		"Part",
		partToMap,
		partFromRecord,
		repo.WithIDKey[Part, string]("partNumber"),
	)
}

func partToMap(p Part) map[string]any {
	return map[string]any{
		"partNumber": p.PartNumber,
		"name":       p.Name,
		"category":   p.Category,
		"brand":      p.Brand,
	}
}

func partFromRecord(rec *neo4j.Record) (Part, error) {
	node, _, err := neo4j.GetRecordValue[dbtype.Node](rec, "n")
	if err != nil {
		return Part{}, err
	}
	return partFromProps(node.Props), nil
}

func partFromProps(props map[string]any) Part {
	return Part{
		PartNumber: strProp(props, "partNumber"),
		Name:       strProp(props, "name"),
		Category:   strProp(props, "category"),
		Brand:      strProp(props, "brand"),
	}
}

func strProp(props map[string]any, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
