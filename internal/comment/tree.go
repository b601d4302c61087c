package comment

import "github.com/VitaminP8/dsaboard/internal/model"

// BuildTree nests a flat comment list by ParentCommentID. Roots and replies keep
// the order of the input. A reply whose parent is not in the input is dropped
// together with its own replies. Every comment is attached at most once, so a
// corrupted parent chain cannot loop.
func BuildTree(comments []*model.Comment) []*model.CommentNode {
	var roots []*model.Comment
	children := make(map[string][]*model.Comment)

	for _, c := range comments {
		if isTopLevel(c) {
			roots = append(roots, c)
			continue
		}
		parent := *c.ParentCommentID
		children[parent] = append(children[parent], c)
	}

	visited := make(map[string]bool, len(comments))
	return attach(roots, children, visited)
}

func attach(level []*model.Comment, children map[string][]*model.Comment, visited map[string]bool) []*model.CommentNode {
	nodes := make([]*model.CommentNode, 0, len(level))
	for _, c := range level {
		if visited[c.ID] {
			continue
		}
		visited[c.ID] = true

		nodes = append(nodes, &model.CommentNode{
			Comment: c,
			Replies: attach(children[c.ID], children, visited),
		})
	}
	return nodes
}

// CountNodes returns the number of nodes in a forest.
func CountNodes(forest []*model.CommentNode) int {
	n := 0
	for _, node := range forest {
		n += 1 + CountNodes(node.Replies)
	}
	return n
}

func isTopLevel(c *model.Comment) bool {
	return c.ParentCommentID == nil || *c.ParentCommentID == ""
}
