// Package graph stores part-to-model fitment in Neo4j. The graph is
// written at index time and answers fitment detail queries; it never
// decides compatibility verdicts.
package graph

// Part is a catalog part node.
type Part struct {
	PartNumber string
	Name       string
	Category   string
	Brand      string
}

// Model is an appliance model node. Edges (Part)-[:FITS]->(Model)
// record fitment.
type Model struct {
	Number   string
	Category string
}
