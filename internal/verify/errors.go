package verify

import "errors"

var (
	errNoPacks      = errors.New("verify: no packs to check")
	errChecksFailed = errors.New("verify: checks failed")
)
