package events_test

import (
	"testing"

	"github.com/ardanlabs/minerace/foundation/events"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Events(t *testing.T) {
	t.Log("Given the need to fan ledger events out to subscribers.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen two subscribers are registered.", testID)
		{
			evts := events.New()
			a := evts.Acquire("a")
			b := evts.Acquire("b")

			evts.Send("state: SubmitTx: ADMITTED: tx[%s]", "alice-bob-2")

			for name, ch := range map[string]<-chan events.Event{"a": a, "b": b} {
				e := <-ch
				if e.Source != "state" || e.Message != "state: SubmitTx: ADMITTED: tx[alice-bob-2]" {
					t.Fatalf("\t%s\tTest %d:\tShould deliver the event to %s: got %+v", failed, testID, name, e)
				}
				t.Logf("\t%s\tTest %d:\tShould deliver the event to %s.", success, testID, name)
			}

			if err := evts.Release("a"); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to release a: %v", failed, testID, err)
			}
			if _, open := <-a; open {
				t.Fatalf("\t%s\tTest %d:\tShould close the released channel.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould close the released channel.", success, testID)

			if err := evts.Release("a"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould fail to release a twice.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould fail to release a twice.", success, testID)

			evts.Shutdown()
			if _, open := <-b; open {
				t.Fatalf("\t%s\tTest %d:\tShould close every channel on shutdown.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould close every channel on shutdown.", success, testID)
		}
	}
}
