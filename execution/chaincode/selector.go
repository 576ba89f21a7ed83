// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package chaincode

import (
	"encoding/json"
	"reflect"
)

// Selector matches json documents by equality on top level fields
type Selector map[string]interface{}

// Match reports whether doc is a json object holding every selector field
func (sel Selector) Match(doc []byte) bool {
	fields := make(map[string]interface{})
	if err := json.Unmarshal(doc, &fields); err != nil {
		return false
	}
	want, err := sel.normalize()
	if err != nil {
		return false
	}
	for name, val := range want {
		got, ok := fields[name]
		if !ok || !reflect.DeepEqual(got, val) {
			return false
		}
	}
	return true
}

// normalize converts selector values to their json decoded form
func (sel Selector) normalize() (map[string]interface{}, error) {
	b, err := json.Marshal(sel)
	if err != nil {
		return nil, err
	}
	ret := make(map[string]interface{})
	return ret, json.Unmarshal(b, &ret)
}
