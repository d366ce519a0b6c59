package tabular

import "fmt"

// GroupBy builds one table per group record. Each group names itself with
// the string member key and carries its rows in the array member members.
// A repeated group name is an error; groups are never merged.
func GroupBy(groups []Record, key, members string) (map[string]*Table, error) {
	out := make(map[string]*Table, len(groups))
	for i, g := range groups {
		name, ok := g.GetString(key)
		if !ok {
			return nil, fmt.Errorf("group %d: missing string member %q", i, key)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("group %d: duplicate group %q", i, name)
		}

		raw, ok := g.Get(members)
		if !ok {
			return nil, fmt.Errorf("group %q: missing member %q", name, members)
		}
		items, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("group %q: member %q is %T, not an array", name, members, raw)
		}

		records := make([]Record, 0, len(items))
		for j, item := range items {
			rec, ok := item.(Record)
			if !ok {
				return nil, fmt.Errorf("group %q: element %d is %T, not an object", name, j, item)
			}
			records = append(records, rec)
		}
		out[name] = FromRecords(records)
	}
	return out, nil
}
