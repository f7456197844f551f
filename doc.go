// Package microgrid is a client for the microgrid control API.
//
// The client drives a generated gRPC stub through the Service boundary and
// adds the behavior the raw stub lacks: typed errors classified by status
// code, per-call timeouts, and a broadcaster layer that keeps one upstream
// stream per component alive across failures and fans it out to any number
// of local subscriptions.
//
// Typical setup:
//
//	desc, err := connection.Parse("grpc://localhost:9090")
//	conn, err := desc.Dial()
//	svc := myadapter.New(conn) // wraps the generated stub
//	client, err := microgrid.NewClient("grpc://localhost:9090", svc,
//		retry.NewExponentialBackoff())
//
//	sub, err := client.ComponentDataSamples(8)
//	defer sub.Close()
//	for samples := range sub.C() {
//		// ...
//	}
//	if err := sub.Err(); err != nil {
//		// retry strategy gave up
//	}
//
// The retry strategy is a mandatory constructor argument: streams always
// reconnect with exactly the strategy the caller chose.
package microgrid
