package validate_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ardanlabs/minerace/foundation/validate"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type model struct {
	Name  string `json:"name" validate:"required"`
	Count int    `yaml:"count" validate:"min=1"`
}

func Test_Check(t *testing.T) {
	t.Log("Given the need to validate models.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a valid model is checked.", testID)
		{
			if err := validate.Check(model{Name: "alice", Count: 1}); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould pass validation: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould pass validation.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen an invalid model is checked.", testID)
		{
			err := validate.Check(model{})
			wrapped := fmt.Errorf("loading: %w", err)

			if !validate.IsFieldErrors(wrapped) {
				t.Fatalf("\t%s\tTest %d:\tShould get field errors through wrapping: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get field errors through wrapping.", success, testID)

			fields := validate.GetFieldErrors(wrapped).Fields()
			if len(fields) != 2 || fields["name"] == "" || fields["count"] == "" {
				t.Fatalf("\t%s\tTest %d:\tShould key errors by json and yaml tag names: %v", failed, testID, fields)
			}
			t.Logf("\t%s\tTest %d:\tShould key errors by json and yaml tag names.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the error isn't a validation error.", testID)
		{
			if fe := validate.GetFieldErrors(errors.New("boom")); fe != nil || len(fe.Fields()) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould get no field errors.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get no field errors.", success, testID)
		}
	}
}
