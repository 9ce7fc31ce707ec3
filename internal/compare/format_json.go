package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/medloans/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	return jf.marshal(compSet)
}

// FormatPayoff generates JSON output for a standalone aggressive payoff run
func (jf *JSONFormatter) FormatPayoff(payoff *domain.AggressivePayoffResult) (string, error) {
	return jf.marshal(payoff)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
