package domain

import "fmt"

// Category is identified by (BrandID, ID). ParentID forms a forest that the
// source data does not guarantee to be acyclic; tree construction and
// structure validation must tolerate self-references and longer cycles.
type Category struct {
	ID            string `json:"id"`
	BrandID       string `json:"brandId"`
	ParentID      string `json:"parentId"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	IsActive      bool   `json:"isActive"`
	ProductsCount int    `json:"productsCount"`
	Priority      int    `json:"priority"`
}

// MaxCategoryDepth is the deepest category nesting the platform supports.
const MaxCategoryDepth = 5

type CategoryNode struct {
	Category
	Level    int             `json:"level"`
	Children []*CategoryNode `json:"children"`
}

// StructureReport is the outcome of ValidateCategoryStructure. Issues are
// non-fatal descriptive strings, each accompanied by one recommendation.
type StructureReport struct {
	IsValid         bool     `json:"isValid"`
	MaxDepth        int      `json:"maxDepth"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// BuildCategoryTree groups a flat category list into a forest by ParentID and
// assigns each node its level. Nodes whose parent is absent from the list are
// treated as roots; self-referential nodes are detached from themselves. A
// visited set guards descent so cyclic input cannot recurse forever.
func BuildCategoryTree(cats []Category) []*CategoryNode {
	nodes := make(map[string]*CategoryNode, len(cats))
	order := make([]string, 0, len(cats))
	for _, c := range cats {
		if _, ok := nodes[c.ID]; ok {
			continue
		}
		nodes[c.ID] = &CategoryNode{Category: c}
		order = append(order, c.ID)
	}

	var roots []*CategoryNode
	for _, id := range order {
		n := nodes[id]
		parent, ok := nodes[n.ParentID]
		if n.ParentID == "" || !ok || n.ParentID == n.ID {
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}

	visited := make(map[string]bool, len(nodes))
	var assign func(n *CategoryNode, level int)
	assign = func(n *CategoryNode, level int) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		n.Level = level
		for _, child := range n.Children {
			assign(child, level+1)
		}
	}
	for _, r := range roots {
		assign(r, 0)
	}

	// Members of a cycle are reachable from no root; surface them as roots so
	// no category silently disappears from the forest.
	for _, id := range order {
		if !visited[id] {
			n := nodes[id]
			roots = append(roots, n)
			assign(n, 0)
		}
	}
	return roots
}

// TreeDepth reports the number of levels in the forest (1 for a flat list).
func TreeDepth(roots []*CategoryNode) int {
	max := 0
	var walk func(n *CategoryNode, depth int)
	walk = func(n *CategoryNode, depth int) {
		if depth > max {
			max = depth
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 1)
	}
	return max
}

// ValidateCategoryStructure flags self-referential nodes, nodes whose
// declared parent is absent from the list, cycles, and forests deeper than
// MaxCategoryDepth. Every flagged condition maps to one recommendation.
func ValidateCategoryStructure(cats []Category) StructureReport {
	report := StructureReport{IsValid: true}
	flag := func(issue, recommendation string) {
		report.IsValid = false
		report.Issues = append(report.Issues, issue)
		report.Recommendations = append(report.Recommendations, recommendation)
	}

	byID := make(map[string]Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	for _, c := range cats {
		if c.ParentID == c.ID && c.ID != "" {
			flag(
				fmt.Sprintf("circular reference: category %q lists itself as its parent", c.ID),
				fmt.Sprintf("Clear the parentId of category %q", c.ID),
			)
			continue
		}
		if c.ParentID != "" {
			if _, ok := byID[c.ParentID]; !ok {
				flag(
					fmt.Sprintf("orphaned category %q references missing parent %q", c.ID, c.ParentID),
					fmt.Sprintf("Reattach category %q to an existing parent or clear its parentId", c.ID),
				)
			}
		}
	}

	for _, id := range findCycleMembers(cats) {
		flag(
			fmt.Sprintf("circular reference involving category %q", id),
			fmt.Sprintf("Break the parent chain of category %q", id),
		)
	}

	roots := BuildCategoryTree(cats)
	report.MaxDepth = TreeDepth(roots)
	if report.MaxDepth > MaxCategoryDepth {
		flag(
			fmt.Sprintf("category tree is %d levels deep, maximum is %d", report.MaxDepth, MaxCategoryDepth),
			fmt.Sprintf("Flatten the hierarchy to at most %d levels", MaxCategoryDepth),
		)
	}
	return report
}

// findCycleMembers returns the ids of categories that sit on a parent chain
// which never reaches a root. Self-references are reported separately and
// excluded here.
func findCycleMembers(cats []Category) []string {
	parent := make(map[string]string, len(cats))
	for _, c := range cats {
		if c.ParentID != "" && c.ParentID != c.ID {
			parent[c.ID] = c.ParentID
		}
	}

	var members []string
	state := make(map[string]int, len(parent)) // 0 unseen, 1 in progress, 2 done
	for _, c := range cats {
		if state[c.ID] != 0 {
			continue
		}
		var chain []string
		id := c.ID
		for {
			if state[id] == 2 {
				break
			}
			if state[id] == 1 {
				// Found the cycle entry point; everything from it onwards in
				// the current chain is a member.
				inCycle := false
				for _, cid := range chain {
					if cid == id {
						inCycle = true
					}
					if inCycle {
						members = append(members, cid)
					}
				}
				break
			}
			state[id] = 1
			chain = append(chain, id)
			next, ok := parent[id]
			if !ok {
				break
			}
			id = next
		}
		for _, cid := range chain {
			state[cid] = 2
		}
	}
	return members
}
