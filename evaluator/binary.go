package evaluator

import (
	"lumen/ast"
	"lumen/errors"
	"lumen/object"
	"lumen/token"
)

func (i *Interpreter) evalBinary(b *ast.Binary) object.Value {
	left := i.Eval(b.Left)

	// short-circuit logical operators evaluate the right operand only when
	// needed.
	switch b.Op.Kind {
	case token.AND_AND:
		if !left.Truthy() {
			return object.Bool(false)
		}
		return object.Bool(i.Eval(b.Right).Truthy())
	case token.OR_OR:
		if left.Truthy() {
			return object.Bool(true)
		}
		return object.Bool(i.Eval(b.Right).Truthy())
	}

	right := i.Eval(b.Right)

	if ln, lok := left.(object.Number); lok {
		if rn, rok := right.(object.Number); rok {
			return numberBinary(b.Op, ln, rn, i.err)
		}
	}
	if ls, lok := left.(object.String); lok {
		if rs, rok := right.(object.String); rok {
			return stringBinary(b.Op, ls, rs, i.err)
		}
	}

	switch b.Op.Kind {
	case token.EQ:
		return object.Bool(left.String() == right.String() && left.TypeName() == right.TypeName())
	case token.NOT_EQ:
		return object.Bool(left.String() != right.String() || left.TypeName() != right.TypeName())
	}

	i.err.Throw(errors.E0x301, b.Op.Line, b.Op.Pos, []string{left.TypeName(), right.TypeName()})
	return object.Null{}
}

func numberBinary(op ast.Token, l, r object.Number, err *errors.Sink) object.Value {
	switch op.Kind {
	case token.PLUS:
		return l + r
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	case token.SLASH:
		if r == 0 {
			err.Throw(errors.E0x301, op.Line, op.Pos, []string{"division by zero"})
			return object.Null{}
		}
		return l / r
	case token.PERCENT:
		if r == 0 {
			err.Throw(errors.E0x301, op.Line, op.Pos, []string{"division by zero"})
			return object.Null{}
		}
		return object.Number(int64(l) % int64(r))
	case token.EQ:
		return object.Bool(l == r)
	case token.NOT_EQ:
		return object.Bool(l != r)
	case token.LT:
		return object.Bool(l < r)
	case token.GT:
		return object.Bool(l > r)
	case token.LT_EQ:
		return object.Bool(l <= r)
	case token.GT_EQ:
		return object.Bool(l >= r)
	case token.AMP:
		return object.Number(int64(l) & int64(r))
	case token.PIPE:
		return object.Number(int64(l) | int64(r))
	case token.CARET:
		return object.Number(int64(l) ^ int64(r))
	}
	err.Throw(errors.E0x301, op.Line, op.Pos, []string{"number", "number"})
	return object.Null{}
}

func stringBinary(op ast.Token, l, r object.String, err *errors.Sink) object.Value {
	switch op.Kind {
	case token.PLUS:
		return l + r
	case token.EQ:
		return object.Bool(l == r)
	case token.NOT_EQ:
		return object.Bool(l != r)
	}
	err.Throw(errors.E0x301, op.Line, op.Pos, []string{"string", "string"})
	return object.Null{}
}
