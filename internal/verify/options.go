package verify

import (
	"io"
	"os"
)

type Options struct {
	Workspace string
	Paths     []string
	JUnitPath string
	Out       io.Writer
}

func (o Options) WithDefaults() Options {
	if o.Out == nil {
		o.Out = os.Stdout
	}

	return o
}
