// Package cta provides typed clients for the Chicago Transit Authority
// "L" endpoints.
//
// # Overview
//
// Four clients share one pipeline:
//
//	build URL -> fetch -> validate against schema -> record query time -> tabulate
//
//   - Stops: the city open-data listing of rail stops (no key, no query time)
//   - Arrivals: Train Tracker arrival predictions for a station or stop
//   - FollowThisTrain: predictions for one train run at its upcoming stops
//   - Locations: in-service train positions grouped by route
//
// # Usage
//
//	arrivals := cta.NewArrivals(apiKey)
//	tbl, err := arrivals.Get(ctx, cta.ArrivalsQuery{MapID: "40380", Max: 5})
//	if err != nil {
//	    var ve *schema.ValidationError
//	    if errors.As(err, &ve) {
//	        // tbl is empty; the response was discarded
//	    }
//	}
//	fmt.Println(tbl.Len(), arrivals.QueryTime())
//
// # Errors
//
// Missing or contradictory arguments fail with an error wrapping
// ErrInvalidArgument before any request is made. Transport failures
// surface as *transport.NetworkError or *transport.HTTPError with a nil
// result. A response that fails schema validation is discarded whole: Get
// returns an empty, non-nil result together with *schema.ValidationError
// and QueryTime keeps its previous value.
//
// # Concurrency
//
// A client performs one blocking round trip per Get and updates its query
// time in place, so a single client must not be shared between goroutines
// without external locking. Separate clients are independent.
package cta
