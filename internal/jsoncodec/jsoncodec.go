// Package jsoncodec wraps sonic's standard-compatible JSON codec so the
// rest of the module shares one marshal/unmarshal implementation instead
// of reaching for encoding/json directly.
package jsoncodec

import "github.com/bytedance/sonic"

var defaultConfig = sonic.ConfigStd

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}
