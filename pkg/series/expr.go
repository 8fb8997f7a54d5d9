package series

// StringFunc is an elementwise string to string transform.
type StringFunc func(string) string

// BoolFunc is an elementwise predicate.
type BoolFunc func(string) bool

// ClassFunc is an elementwise classifier. Returning ok=false yields a
// null output position.
type ClassFunc func(string) (string, bool)

type exprKind int

const (
	kindTransform exprKind = iota
	kindPredicate
	kindClassifier
)

// Expr is a named elementwise expression over a Series. Expressions are
// pure and stateless, so a single Expr is safe to apply concurrently to
// independent series.
type Expr struct {
	name string
	kind exprKind

	str   StringFunc
	pred  BoolFunc
	class ClassFunc
}

// Transform wraps a string to string function as a named expression.
func Transform(name string, fn StringFunc) Expr {
	return Expr{name: name, kind: kindTransform, str: fn}
}

// Predicate wraps a boolean test as a named expression. Applied values
// materialize as "true"/"false".
func Predicate(name string, fn BoolFunc) Expr {
	return Expr{name: name, kind: kindPredicate, pred: fn}
}

// Classifier wraps a classification function as a named expression.
// Unclassified values become null output positions.
func Classifier(name string, fn ClassFunc) Expr {
	return Expr{name: name, kind: kindClassifier, class: fn}
}

// Name returns the registered expression name.
func (e Expr) Name() string {
	return e.name
}

// IsPredicate reports whether the expression yields booleans.
func (e Expr) IsPredicate() bool {
	return e.kind == kindPredicate
}

// Apply evaluates the expression over every set position of in. Null
// positions bypass the expression entirely and stay null. The output
// series is named "<input>_<expr>".
func (e Expr) Apply(in *Series) *Series {
	out := New(in.Name+"_"+e.name, in.Len())

	for i := 0; i < in.Len(); i++ {
		v, ok := in.Value(i)
		if !ok {
			out.AppendNull()
			continue
		}

		switch e.kind {
		case kindTransform:
			out.Append(e.str(v))
		case kindPredicate:
			if e.pred(v) {
				out.Append("true")
			} else {
				out.Append("false")
			}
		case kindClassifier:
			if c, ok := e.class(v); ok {
				out.Append(c)
			} else {
				out.AppendNull()
			}
		}
	}

	return out
}

// Eval evaluates the expression for a single value, materialized the same
// way Apply does.
func (e Expr) Eval(v string) (string, bool) {
	switch e.kind {
	case kindTransform:
		return e.str(v), true
	case kindPredicate:
		if e.pred(v) {
			return "true", true
		}
		return "false", true
	default:
		return e.class(v)
	}
}
