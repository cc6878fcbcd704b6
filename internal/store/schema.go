package store

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/go-playground/validator/v10"
)

// Schema describes the allowed root keys and the typed validators bound to
// path patterns. A write is validated by decoding every affected subtree into
// its registered Go type and running the validator tags on it.
type Schema struct {
	roots    map[string]struct{}
	rules    []rule
	validate *validator.Validate
}

type rule struct {
	pattern []string
	check   func(v any) error
}

// NewSchema creates a schema accepting the given root keys
func NewSchema(roots ...string) *Schema {
	s := &Schema{
		roots:    make(map[string]struct{}, len(roots)),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, r := range roots {
		s.roots[r] = struct{}{}
	}
	return s
}

// Roots returns the registered root keys in sorted order
func (s *Schema) Roots() []string {
	out := make([]string, 0, len(s.roots))
	for r := range s.roots {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Register binds type T to a path pattern. Values written at matching paths
// must decode into T and pass its validate tags and the extra checks.
func Register[T any](s *Schema, pattern string, checks ...func(T) error) {
	segs := mustParse(pattern)
	s.rules = append(s.rules, rule{
		pattern: segs,
		check: func(v any) error {
			var typed T
			if err := decode(v, &typed); err != nil {
				return err
			}
			if err := s.validateValue(typed); err != nil {
				return err
			}
			for _, c := range checks {
				if err := c(typed); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// RegisterVar binds type T to a path pattern and validates it with a
// single validator tag, e.g. "gte=0" for counters or "dive,gte=0" for maps.
func RegisterVar[T any](s *Schema, pattern, tag string) {
	segs := mustParse(pattern)
	s.rules = append(s.rules, rule{
		pattern: segs,
		check: func(v any) error {
			var typed T
			if err := decode(v, &typed); err != nil {
				return err
			}
			return s.validate.Var(typed, tag)
		},
	})
}

func mustParse(pattern string) []string {
	segs, err := ParsePath(pattern)
	if err != nil {
		panic(fmt.Sprintf("store: schema pattern %q: %v", pattern, err))
	}
	return segs
}

// validateValue runs struct validation on structs and on struct elements of
// slices and maps. Other kinds are accepted once they decode.
func (s *Schema) validateValue(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		return s.validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := s.validateValue(rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			if err := s.validateValue(iter.Value().Interface()); err != nil {
				return fmt.Errorf("[%v]: %w", iter.Key().Interface(), err)
			}
		}
	}
	return nil
}

// checkRoot rejects writes outside the known roots
func (s *Schema) checkRoot(segs []string) error {
	if len(segs) == 0 {
		return nil
	}
	if _, ok := s.roots[segs[0]]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPath, segs[0])
	}
	return nil
}

// check validates every rule whose pattern is related to the written path,
// reading the candidate values from the new root.
func (s *Schema) check(root map[string]any, written []string) error {
	if err := s.checkRoot(written); err != nil {
		return err
	}
	if len(written) == 0 {
		for k := range root {
			if err := s.checkRoot([]string{k}); err != nil {
				return err
			}
		}
	}

	for _, r := range s.rules {
		if !prefixMatches(r.pattern, written) {
			continue
		}
		for _, concrete := range expand(r.pattern, written, root) {
			v, ok := lookup(root, concrete)
			if !ok {
				continue
			}
			if err := r.check(v); err != nil {
				return fmt.Errorf("%w at %s: %v", ErrValidation, joinPath(concrete), err)
			}
		}
	}
	return nil
}
