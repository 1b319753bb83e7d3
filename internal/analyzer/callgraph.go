package analyzer

import "fmt"

// entityIndex supports callee resolution: entities by (file, name) and by
// bare name across the snapshot, both in snapshot-insertion order.
type entityIndex struct {
	byFileName map[string][]*Entity // key: file + "\x00" + name
	byName     map[string][]*Entity
	refs       map[EntityRef]bool
}

func indexEntities(entities []Entity) *entityIndex {
	idx := &entityIndex{
		byFileName: make(map[string][]*Entity),
		byName:     make(map[string][]*Entity, len(entities)),
		refs:       make(map[EntityRef]bool, len(entities)),
	}
	for i := range entities {
		e := &entities[i]
		fk := e.File + "\x00" + e.Name
		idx.byFileName[fk] = append(idx.byFileName[fk], e)
		idx.byName[e.Name] = append(idx.byName[e.Name], e)
		idx.refs[e.Ref()] = true
	}
	return idx
}

// resolveCallee applies the resolution policy for one call site:
// (a) an entity with the exact qualified name in the caller's file (first by
// snapshot order when the name collides within the file), (b) an entity with
// that name anywhere in the snapshot if unambiguous, (c) unresolved.
func (idx *entityIndex) resolveCallee(callerFile, name string) *EntityRef {
	if local := idx.byFileName[callerFile+"\x00"+name]; len(local) > 0 {
		ref := local[0].Ref()
		return &ref
	}
	if global := idx.byName[name]; len(global) == 1 {
		ref := global[0].Ref()
		return &ref
	}
	return nil
}

// buildCallGraph resolves raw call sites against the extracted entity set.
// Unresolved callees are retained with their raw name so caller/callee
// queries stay best-effort. A call site whose caller is missing from the
// snapshot breaks the extraction contract and fails loudly.
func buildCallGraph(calls []CallSite, idx *entityIndex) ([]CallEdge, error) {
	edges := make([]CallEdge, 0, len(calls))
	for _, c := range calls {
		if !idx.refs[c.Caller] {
			return nil, fmt.Errorf("%w: call edge caller %s (%s:%d) not in snapshot",
				ErrInternal, c.Caller.Name, c.Caller.File, c.Caller.StartLine)
		}
		edges = append(edges, CallEdge{
			Caller: c.Caller,
			Callee: CallTarget{
				Entity: idx.resolveCallee(c.Caller.File, c.Callee),
				Name:   c.Callee,
			},
			Site: c.Site,
		})
	}
	return edges, nil
}
