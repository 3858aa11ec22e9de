package roll

import "errors"

var errNoTable = errors.New("roll: table name required")
