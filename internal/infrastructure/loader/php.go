package loader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/VKCOM/php-parser/pkg/ast"
	"github.com/VKCOM/php-parser/pkg/conf"
	phperrors "github.com/VKCOM/php-parser/pkg/errors"
	"github.com/VKCOM/php-parser/pkg/parser"
	"github.com/VKCOM/php-parser/pkg/version"

	"langjs/internal/domain"
	"langjs/internal/ports/output"
)

var _ output.MessageLoader = PHP{}

var phpVersion = &version.Version{Major: 8, Minor: 0}

// PHP loads message group files of the form "<?php return [...];".
//
// The file is parsed and its return expression evaluated, never executed:
// only literal arrays, scalars and string concatenation are understood.
// Anything else (function calls, constants, variables) fails with
// domain.ErrExecutionFailure.
type PHP struct{}

func (PHP) Extensions() []string { return []string{".php"} }

func (PHP) StringsDomain() bool { return false }

func (PHP) Load(name string, data []byte) (any, error) {
	v, err := evalPHP(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrExecutionFailure, name, err)
	}
	return v, nil
}

func evalPHP(src []byte) (any, error) {
	src = bytes.TrimPrefix(src, []byte("\ufeff"))

	var syntaxErrs []*phperrors.Error
	root, err := parser.Parse(src, conf.Config{
		Version: phpVersion,
		ErrorHandlerFunc: func(e *phperrors.Error) {
			syntaxErrs = append(syntaxErrs, e)
		},
	})
	if err != nil {
		return nil, err
	}
	if len(syntaxErrs) > 0 {
		e := syntaxErrs[0]
		if e.Pos != nil {
			return nil, fmt.Errorf("line %d: %s", e.Pos.StartLine, e.Msg)
		}
		return nil, fmt.Errorf("%s", e.Msg)
	}

	r, ok := root.(*ast.Root)
	if !ok || r == nil {
		return nil, fmt.Errorf("file does not return an array")
	}
	ret, err := findReturn(r.Stmts)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, fmt.Errorf("file does not return an array")
	}
	if ret.Expr == nil {
		return nil, nodeErrorf(ret, "empty return")
	}
	return evalExpr(ret.Expr)
}

// findReturn skips declare, namespace and use statements and returns the
// first return statement, or nil when there is none.
func findReturn(stmts []ast.Vertex) (*ast.StmtReturn, error) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.StmtReturn:
			return s, nil
		case *ast.StmtNamespace:
			// braced namespace
			if ret, err := findReturn(s.Stmts); ret != nil || err != nil {
				return ret, err
			}
		case *ast.StmtDeclare, *ast.StmtUseList, *ast.StmtGroupUseList,
			*ast.StmtNop, *ast.StmtInlineHtml:
		default:
			return nil, nodeErrorf(stmt, "unsupported statement %s", nodeName(stmt))
		}
	}
	return nil, nil
}

func evalExpr(n ast.Vertex) (any, error) {
	switch x := n.(type) {
	case *ast.ScalarString:
		return phpStringLiteral(x.Value), nil
	case *ast.ScalarLnumber:
		v, err := phpIntLiteral(string(x.Value))
		if err != nil {
			return nil, nodeErrorf(n, "%v", err)
		}
		return v, nil
	case *ast.ScalarDnumber:
		v, err := phpFloatLiteral(string(x.Value))
		if err != nil {
			return nil, nodeErrorf(n, "%v", err)
		}
		return v, nil
	case *ast.ScalarHeredoc:
		return evalHeredoc(x)
	case *ast.ScalarEncapsed:
		return nil, nodeErrorf(n, "variable interpolation is not supported")
	case *ast.ExprBrackets:
		return evalExpr(x.Expr)
	case *ast.ExprBinaryConcat:
		return evalConcat(x)
	case *ast.ExprUnaryMinus:
		return evalSign(x.Expr, true)
	case *ast.ExprUnaryPlus:
		return evalSign(x.Expr, false)
	case *ast.ExprConstFetch:
		return evalConst(x)
	case *ast.ExprArray:
		return evalArray(x)
	default:
		return nil, nodeErrorf(n, "unsupported expression %s", nodeName(n))
	}
}

func evalConcat(n *ast.ExprBinaryConcat) (any, error) {
	var parts []string
	for _, side := range []ast.Vertex{n.Left, n.Right} {
		v, err := evalExpr(side)
		if err != nil {
			return nil, err
		}
		s, err := phpToString(v)
		if err != nil {
			return nil, nodeErrorf(side, "%v", err)
		}
		parts = append(parts, s)
	}
	return parts[0] + parts[1], nil
}

func evalSign(operand ast.Vertex, neg bool) (any, error) {
	v, err := evalExpr(operand)
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case int64:
		if neg {
			return -x, nil
		}
		return x, nil
	case float64:
		if neg {
			return -x, nil
		}
		return x, nil
	default:
		return nil, nodeErrorf(operand, "unary operator on non-number")
	}
}

// evalConst accepts the true, false and null constants only.
func evalConst(n *ast.ExprConstFetch) (any, error) {
	var parts []ast.Vertex
	switch name := n.Const.(type) {
	case *ast.Name:
		parts = name.Parts
	case *ast.NameFullyQualified:
		parts = name.Parts
	}
	if len(parts) == 1 {
		if part, ok := parts[0].(*ast.NamePart); ok {
			switch string(bytes.ToLower(part.Value)) {
			case "true":
				return true, nil
			case "false":
				return false, nil
			case "null":
				return nil, nil
			}
		}
	}
	return nil, nodeErrorf(n, "constants are not supported")
}

func evalArray(n *ast.ExprArray) (any, error) {
	arr := newPHPArray()
	for _, item := range n.Items {
		it, ok := item.(*ast.ExprArrayItem)
		if !ok || it == nil {
			if item == nil {
				continue
			}
			return nil, nodeErrorf(item, "unsupported array element %s", nodeName(item))
		}
		if it.Val == nil {
			// trailing comma
			continue
		}
		if it.EllipsisTkn != nil || it.AmpersandTkn != nil {
			return nil, nodeErrorf(it, "spread and references are not supported")
		}
		value, err := evalExpr(it.Val)
		if err != nil {
			return nil, err
		}
		if it.Key == nil {
			arr.push(value)
			continue
		}
		k, err := evalExpr(it.Key)
		if err != nil {
			return nil, err
		}
		key, err := phpArrayKey(k)
		if err != nil {
			return nil, nodeErrorf(it.Key, "%v", err)
		}
		arr.set(key, value)
	}
	return arr.value(), nil
}

// evalHeredoc decodes heredoc and nowdoc literals. Interpolated parts are
// rejected.
func evalHeredoc(n *ast.ScalarHeredoc) (any, error) {
	var body []byte
	for _, part := range n.Parts {
		p, ok := part.(*ast.ScalarEncapsedStringPart)
		if !ok {
			return nil, nodeErrorf(part, "variable interpolation is not supported")
		}
		body = append(body, p.Value...)
	}

	var open, closing []byte
	if n.OpenHeredocTkn != nil {
		open = n.OpenHeredocTkn.Value
	}
	if n.CloseHeredocTkn != nil {
		closing = n.CloseHeredocTkn.Value
	}
	text := heredocBody(string(body), string(closing))
	if bytes.ContainsRune(open, '\'') {
		return text, nil
	}
	return phpUnescape(text, false), nil
}

func nodeErrorf(n ast.Vertex, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n != nil {
		if pos := n.GetPosition(); pos != nil {
			return fmt.Errorf("line %d: %s", pos.StartLine, msg)
		}
	}
	return fmt.Errorf("%s", msg)
}

// nodeName turns *ast.ExprFunctionCall into "ExprFunctionCall".
func nodeName(n ast.Vertex) string {
	name := fmt.Sprintf("%T", n)
	return name[strings.LastIndexByte(name, '.')+1:]
}
