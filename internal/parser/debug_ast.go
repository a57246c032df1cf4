package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"tern/internal/ast"
	"tern/internal/types"
)

// WalkAST recursively serializes an AST into a map structure for JSON output.
// Resolved types show up only after the checker has run.
func WalkAST(node ast.Node) interface{} {
	if node == nil || (reflect.ValueOf(node).Kind() == reflect.Ptr && reflect.ValueOf(node).IsNil()) {
		return nil
	}

	switch n := node.(type) {
	case *ast.Program:
		statements := make([]interface{}, len(n.Statements))
		for i, s := range n.Statements {
			statements[i] = WalkAST(s)
		}
		return map[string]interface{}{
			"type":       "Program",
			"statements": statements,
		}

	case *ast.LetStatement:
		return map[string]interface{}{
			"type":         "LetStatement",
			"token":        n.TokenLiteral(),
			"const":        n.Const,
			"name":         WalkAST(n.Name),
			"declaredType": typeString(n.DeclaredType),
			"value":        WalkAST(n.Value),
		}

	case *ast.FunctionStatement:
		params := make([]interface{}, len(n.Parameters))
		for i, param := range n.Parameters {
			params[i] = map[string]interface{}{
				"name":      param.Name.Value,
				"paramType": param.Type.String(),
			}
		}
		return map[string]interface{}{
			"type":       "FunctionStatement",
			"token":      n.TokenLiteral(),
			"name":       WalkAST(n.Name),
			"parameters": params,
			"returnType": typeString(n.ReturnType),
			"body":       WalkAST(n.Body),
		}

	case *ast.IfStatement:
		return map[string]interface{}{
			"type":       "IfStatement",
			"token":      n.TokenLiteral(),
			"condition":  WalkAST(n.Condition),
			"thenBranch": WalkAST(n.ThenBranch),
			"elseBranch": WalkAST(n.ElseBranch),
		}

	case *ast.ReturnStatement:
		return map[string]interface{}{
			"type":        "ReturnStatement",
			"token":       n.TokenLiteral(),
			"returnValue": WalkAST(n.ReturnValue),
		}

	case *ast.ExpressionStatement:
		return map[string]interface{}{
			"type":       "ExpressionStatement",
			"token":      n.TokenLiteral(),
			"expression": WalkAST(n.Expression),
		}

	case *ast.BlockStatement:
		statements := make([]interface{}, len(n.Statements))
		for i, s := range n.Statements {
			statements[i] = WalkAST(s)
		}
		return map[string]interface{}{
			"type":       "BlockStatement",
			"token":      n.TokenLiteral(),
			"statements": statements,
		}

	case *ast.Identifier:
		return map[string]interface{}{
			"type":         "Identifier",
			"token":        n.TokenLiteral(),
			"value":        n.Value,
			"resolvedType": typeString(n.Type()),
		}

	case *ast.NumberLiteral:
		return map[string]interface{}{
			"type":         "NumberLiteral",
			"token":        n.TokenLiteral(),
			"value":        n.Value,
			"resolvedType": typeString(n.Type()),
		}

	case *ast.StringLiteral:
		return map[string]interface{}{
			"type":         "StringLiteral",
			"token":        n.TokenLiteral(),
			"value":        n.Value,
			"resolvedType": typeString(n.Type()),
		}

	case *ast.BooleanLiteral:
		return map[string]interface{}{
			"type":         "BooleanLiteral",
			"token":        n.TokenLiteral(),
			"value":        n.Value,
			"resolvedType": typeString(n.Type()),
		}

	case *ast.InfixExpression:
		return map[string]interface{}{
			"type":         "InfixExpression",
			"token":        n.TokenLiteral(),
			"left":         WalkAST(n.Left),
			"operator":     n.Operator,
			"right":        WalkAST(n.Right),
			"resolvedType": typeString(n.Type()),
		}

	case *ast.AssignExpression:
		return map[string]interface{}{
			"type":         "AssignExpression",
			"token":        n.TokenLiteral(),
			"name":         WalkAST(n.Name),
			"value":        WalkAST(n.Value),
			"resolvedType": typeString(n.Type()),
		}

	case *ast.CallExpression:
		args := make([]interface{}, len(n.Arguments))
		for i, arg := range n.Arguments {
			args[i] = WalkAST(arg)
		}
		return map[string]interface{}{
			"type":         "CallExpression",
			"token":        n.TokenLiteral(),
			"function":     WalkAST(n.Function),
			"arguments":    args,
			"resolvedType": typeString(n.Type()),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
			"node": fmt.Sprintf("%T", n),
		}
	}
}

func typeString(t types.Type) string {
	if t == nil {
		return "unset"
	}
	return t.String()
}

func RenderASTAsJSON(node ast.Node) (string, error) {
	astMap := WalkAST(node)
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(astMap); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %v", err)
	}
	return buf.String(), nil
}
