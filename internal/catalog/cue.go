package catalog

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// ParseCUE parses a CUE catalog. The file must evaluate to a struct with a
// concrete items list of strings; name is optional.
//
//	name:  "movies"
//	items: ["alien", "heat", "ran"]
func ParseCUE(file string, data []byte) (*Catalog, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(file))
	if err := value.Err(); err != nil {
		return nil, cueError(file, err)
	}
	if err := value.Validate(); err != nil {
		return nil, cueError(file, err)
	}

	var name string
	if nameVal := value.LookupPath(cue.ParsePath("name")); nameVal.Exists() {
		s, err := nameVal.String()
		if err != nil {
			return nil, posError(file, nameVal.Pos(), ErrCodeParse, "name must be a concrete string")
		}
		name = s
	}

	itemsVal := value.LookupPath(cue.ParsePath("items"))
	if !itemsVal.Exists() {
		return nil, &LoadError{Code: ErrCodeNoItems, File: file, Message: "missing items list"}
	}
	iter, err := itemsVal.List()
	if err != nil {
		return nil, posError(file, itemsVal.Pos(), ErrCodeNoItems, "items must be a list")
	}

	var entries []entry
	for iter.Next() {
		v := iter.Value()
		s, err := v.String()
		if err != nil {
			return nil, posError(file, v.Pos(), ErrCodeInvalidItem, "item must be a concrete string")
		}
		pos := v.Pos()
		entries = append(entries, entry{id: s, line: pos.Line(), column: pos.Column()})
	}
	return build(file, name, entries)
}

func cueError(file string, err error) *LoadError {
	le := &LoadError{Code: ErrCodeParse, File: file, Message: errors.Details(err, nil)}
	if positions := errors.Positions(err); len(positions) > 0 && positions[0].IsValid() {
		le.Line = positions[0].Line()
		le.Column = positions[0].Column()
	}
	return le
}

func posError(file string, pos token.Pos, code, msg string) *LoadError {
	le := &LoadError{Code: code, File: file, Message: msg}
	if pos.IsValid() {
		le.Line = pos.Line()
		le.Column = pos.Column()
	}
	return le
}
