package description

import (
	"fmt"

	"go.trai.ch/beelder/internal/core/domain"
	"go.trai.ch/zerr"
)

// node is a rule line together with the lines nested under it.
type node struct {
	line
	children []*node
}

// buildTree nests lines by indentation. Every top-level line must be a rule.
func buildTree(lines []line) ([]*node, error) {
	var roots []*node
	var stack []*node
	for _, l := range lines {
		n := &node{line: l}
		for len(stack) > 0 && stack[len(stack)-1].nesting >= l.nesting {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			if l.nesting != 0 {
				return nil, lineError(l.number, "unexpected indentation")
			}
			if !l.hasKey {
				return nil, lineError(l.number, fmt.Sprintf("met unexpected token %q", l.values[0]))
			}
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
		}
		stack = append(stack, n)
	}
	return roots, nil
}

// arguments returns the values on the rule's own line followed by those on its
// continuation lines. Nested rules are not arguments.
func (n *node) arguments() ([]string, error) {
	args := append([]string(nil), n.values...)
	for _, child := range n.children {
		if child.hasKey {
			return nil, lineError(child.number, fmt.Sprintf("unexpected rule %q in the argument list of %q", child.key, n.key))
		}
		if len(child.children) > 0 {
			return nil, lineError(child.children[0].number, "unexpected indentation")
		}
		args = append(args, child.values...)
	}
	return args, nil
}

// single returns the only argument of the rule.
func (n *node) single() (string, error) {
	args, err := n.arguments()
	if err != nil {
		return "", err
	}
	switch len(args) {
	case 0:
		return "", lineError(n.number, fmt.Sprintf("no %s is specified", n.key))
	case 1:
		return args[0], nil
	default:
		return "", lineError(n.number, "only one argument is allowed")
	}
}

// rules returns the nested rules, rejecting arguments where only rules are allowed.
func (n *node) rules() ([]*node, error) {
	if len(n.values) > 0 {
		return nil, lineError(n.number, fmt.Sprintf("%s expects nested fields, not arguments", n.key))
	}
	for _, child := range n.children {
		if !child.hasKey {
			return nil, lineError(child.number, fmt.Sprintf("expected \"key: value\" under %s", n.key))
		}
	}
	return n.children, nil
}

func lineError(number int, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrParse, fmt.Sprintf("line %d: %s", number, msg)), "line", number)
}
