// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package mergeinfo

import (
	"sort"
	"strconv"
	"strings"

	"github.com/antgroup/hugescm-wcmerge/internal/rangeset"
	"github.com/antgroup/hugescm-wcmerge/internal/wcerr"
)

// Parse decodes the bit-exact mergeinfo property format (spec §6):
//
//	line  = path ":" ranges "\n"
//	ranges = range ("," range)*
//	range  = number ("-" number)? ("*")?
//
// Relative paths are tolerated and upgraded to absolute. If the same
// absolute path appears on two lines, their range lists are merged rather
// than the second overwriting the first (spec S2, the historical
// relative-vs-absolute key bug).
func Parse(input string) (*Mergeinfo, error) {
	mi := New()
	pos := 0
	for pos < len(input) {
		nl := strings.IndexByte(input[pos:], '\n')
		var line string
		var next int
		if nl == -1 {
			line = input[pos:]
			next = len(input)
		} else {
			line = input[pos : pos+nl]
			next = pos + nl + 1
		}
		if line != "" {
			path, rangesStr, err := parseLine(line)
			if err != nil {
				return nil, err
			}
			rl, err := parseRangeList(rangesStr, path)
			if err != nil {
				return nil, err
			}
			if existing, ok := mi.Get(path); ok {
				rl = rangeset.Merge(existing, rl)
			}
			mi.Set(path, rl)
		}
		pos = next
	}
	return mi, nil
}

func parseLine(line string) (path, ranges string, err error) {
	idx := strings.LastIndexByte(line, ':')
	if idx == -1 {
		return "", "", wcerr.NewErrMergeinfoParse(line, "pathname not terminated by ':'")
	}
	if idx == 0 {
		return "", "", wcerr.NewErrMergeinfoParse(line, "no pathname preceding ':'")
	}
	return normalizePath(line[:idx]), line[idx+1:], nil
}

func parseRangeList(s, pathForErr string) (rangeset.List, error) {
	if s == "" {
		return nil, wcerr.NewErrMergeinfoParse(s, "mergeinfo for '%s' maps to an empty revision range", pathForErr)
	}
	tokens := strings.Split(s, ",")
	list := make(rangeset.List, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "" {
			return nil, wcerr.NewErrMergeinfoParse(s, "empty range element in '%s'", pathForErr)
		}
		rg, err := parseRangeElement(tok)
		if err != nil {
			return nil, err
		}
		list = append(list, rg)
	}
	return canonicalize(list, s)
}

func parseRangeElement(tok string) (rangeset.Range, error) {
	inheritable := true
	if strings.HasSuffix(tok, "*") {
		inheritable = false
		tok = tok[:len(tok)-1]
	}
	if dash := strings.IndexByte(tok, '-'); dash > 0 {
		first, err := parseRevnum(tok[:dash])
		if err != nil {
			return rangeset.Range{}, err
		}
		second, err := parseRevnum(tok[dash+1:])
		if err != nil {
			return rangeset.Range{}, err
		}
		if first > second {
			return rangeset.Range{}, wcerr.NewErrMergeinfoParse(tok, "unable to parse reversed revision range '%d-%d'", first, second)
		}
		if first == second {
			return rangeset.Range{}, wcerr.NewErrMergeinfoParse(tok, "unable to parse revision range '%d-%d' with same start and end revisions", first, second)
		}
		return rangeset.Range{Start: first - 1, End: second, Inheritable: inheritable}, nil
	}
	n, err := parseRevnum(tok)
	if err != nil {
		return rangeset.Range{}, err
	}
	return rangeset.Range{Start: n - 1, End: n, Inheritable: inheritable}, nil
}

func parseRevnum(s string) (rangeset.Revnum, error) {
	if s == "" {
		return 0, wcerr.NewErrMergeinfoParse(s, "missing revision number")
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, wcerr.NewErrMergeinfoParse(s, "invalid revision number '%s'", s)
	}
	return rangeset.Revnum(n), nil
}

// canonicalize sorts a single line's parsed ranges and fuses adjacent or
// overlapping ranges of matching inheritability, failing if two ranges
// truly overlap with differing inheritance (spec S3).
func canonicalize(list rangeset.List, rawForErr string) (rangeset.List, error) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Start != list[j].Start {
			return list[i].Start < list[j].Start
		}
		return list[i].End < list[j].End
	})
	out := make(rangeset.List, 0, len(list))
	out = append(out, list[0])
	for _, cur := range list[1:] {
		last := &out[len(out)-1]
		if last.Start <= cur.End && cur.Start <= last.End {
			if cur.Start < last.End && cur.Inheritable != last.Inheritable {
				return nil, wcerr.NewErrMergeinfoParse(rawForErr,
					"overlapping ranges with different inheritance types: '%s' and '%s'", last.String(), cur.String())
			}
			if last.Inheritable == cur.Inheritable {
				if cur.End > last.End {
					last.End = cur.End
				}
				continue
			}
		}
		out = append(out, cur)
	}
	return out, nil
}

// Serialise encodes mi in the bit-exact on-disk format: lines sorted by
// path, each "/path:range,range,...\n".
func Serialise(mi *Mergeinfo) string {
	var b strings.Builder
	mi.Each(func(path string, rl rangeset.List) {
		b.WriteString(path)
		b.WriteByte(':')
		b.WriteString(rl.String())
		b.WriteByte('\n')
	})
	return b.String()
}
