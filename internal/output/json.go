package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	perr "github.com/h4ckm1n-dev/skyscanner-cli/internal/errors"
)

// Writer receives every rendered result; logs go to stderr
var Writer io.Writer = os.Stdout

func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	_, err = fmt.Fprintln(Writer, string(data))
	return err
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// JSONError reports err with its error code, e.g. invalid_argument
func JSONError(msg string, err error) {
	_ = JSON(ErrorResponse{Error: msg, Code: perr.CodeOf(err).String(), Details: err.Error()})
}
