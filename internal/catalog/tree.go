package catalog

import "storysite/internal/models"

// CategoryNode - узел дерева категорий.
type CategoryNode struct {
	Category models.Category
	Depth    int
	Children []*CategoryNode
}

// Tree строит дерево по parentId. Категории с неизвестным родителем становятся корнями;
// циклы разрываются на первой повторно встреченной категории.
func Tree(categories []models.Category) []*CategoryNode {
	byID := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		byID[c.ID] = struct{}{}
	}
	children := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		parent := c.Parent()
		if _, ok := byID[parent]; parent == "" || parent == c.ID || !ok {
			roots = append(roots, c)
			continue
		}
		children[parent] = append(children[parent], c)
	}

	visited := make(map[string]bool, len(categories))
	var build func(c models.Category, depth int) *CategoryNode
	build = func(c models.Category, depth int) *CategoryNode {
		visited[c.ID] = true
		node := &CategoryNode{Category: c, Depth: depth}
		for _, child := range children[c.ID] {
			if visited[child.ID] {
				continue
			}
			node.Children = append(node.Children, build(child, depth+1))
		}
		return node
	}

	var out []*CategoryNode
	for _, r := range roots {
		out = append(out, build(r, 0))
	}
	// Категории, замкнутые в цикл без корня.
	for _, c := range categories {
		if !visited[c.ID] {
			out = append(out, build(c, 0))
		}
	}
	return out
}

// Flatten обходит дерево в глубину; удобно для шаблонов и CLI.
func Flatten(nodes []*CategoryNode) []*CategoryNode {
	var out []*CategoryNode
	var walk func([]*CategoryNode)
	walk = func(ns []*CategoryNode) {
		for _, n := range ns {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}
