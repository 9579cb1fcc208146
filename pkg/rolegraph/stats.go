package rolegraph

// GraphStats summarizes a RoleGraph's current size (spec §4.3.5
// get_graph_stats: "{ node_count, edge_count, document_count,
// thesaurus_size, populated: bool }", also surfaced verbatim by the §6.6
// CLI stats command). The registry reports it per role from ListRoles.
type GraphStats struct {
	NodeCount     int  `json:"node_count"`
	EdgeCount     int  `json:"edge_count"`
	DocumentCount int  `json:"document_count"`
	ThesaurusSize int  `json:"thesaurus_size"`
	Populated     bool `json:"populated"`
}

// GetGraphStats returns g's current node, edge, document, and bound
// thesaurus counts, plus whether at least one document has been indexed
// (spec §4.3.5).
func (g *RoleGraph) GetGraphStats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return GraphStats{
		NodeCount:     len(g.nodes),
		EdgeCount:     len(g.edges),
		DocumentCount: len(g.documents),
		ThesaurusSize: g.thesaurusSize,
		Populated:     len(g.documents) > 0,
	}
}

// IsGraphPopulated reports whether at least one document has been
// indexed (spec §4.3.5 is_graph_populated). It only counts documents, so
// an empty graph and one whose indexing failed before any document was
// published look the same.
func (g *RoleGraph) IsGraphPopulated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.documents) > 0
}

// FindDocumentIdsForTerm returns every document id in which the concept
// nodeID was matched (spec §9 supplemented operation
// find_document_ids_for_term), using the reverse index built during
// InsertDocument rather than scanning all documents.
func (g *RoleGraph) FindDocumentIdsForTerm(nodeID uint64) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	set, ok := g.termDocs[nodeID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// GetDocument returns the indexed document for id, or ErrDocumentNotFound
// if it has never been inserted.
func (g *RoleGraph) GetDocument(id string) (IndexedDocument, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	doc, ok := g.documents[id]
	if !ok {
		return IndexedDocument{}, ErrDocumentNotFound
	}
	return *doc, nil
}

// ValidateDocuments reports every document id in ids that is not
// currently indexed in g (spec §9 supplemented operation
// validate_documents), so a caller preparing a batch re-index can tell
// which ids are stale references before querying them.
func (g *RoleGraph) ValidateDocuments(ids []string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var missing []string
	for _, id := range ids {
		if _, ok := g.documents[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
