package exgroup_test

import (
	"context"
	"fmt"
	"log"

	"github.com/xraph/exgroup"
	"github.com/xraph/exgroup/clause"
	"github.com/xraph/exgroup/group"
	"github.com/xraph/exgroup/match"
)

type configError struct{ field string }

func (e *configError) Error() string { return "bad config field " + e.field }

type probeError struct{ target string }

func (e *probeError) Error() string { return "probe failed for " + e.target }

func Example() {
	eng, err := exgroup.New()
	if err != nil {
		log.Fatal(err)
	}

	raised := group.New("startup failed",
		&configError{field: "port"},
		&configError{field: "host"},
		&probeError{target: "db"},
	)

	res, err := eng.Dispatch(context.Background(), raised,
		clause.New("config", match.Type[*configError](), func(_ context.Context, matched *group.Group) clause.Signal {
			fmt.Printf("fixed %d config errors\n", matched.Count())
			return clause.Done()
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(res.Propagated)
	// Output:
	// fixed 2 config errors
	// startup failed (1 errors): probe failed for db
}
