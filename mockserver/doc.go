/*
Package mockserver provides a protocol-compatible mock of the GameServices
host counterpart for testing guest code without a real host.

The mock exposes a HostCall method with the waPC host function signature, so
a gameservices client can be pointed at it directly:

	srv, _ := mockserver.New(mockserver.Config{StatePath: path, SignedIn: true})
	client, _ := gameservices.New(gameservices.Config{HostCall: srv.HostCall})
	srv.Deliver = client.Deliver

Commands are processed against a record store persisted as a single JSON
document, and responses travel back through the same Deliver entry point a
real asynchronous host would invoke, keeping the client code path identical
in tests and production. The mock also absorbs the logging and metrics
capabilities: guest log lines are forwarded to a logrus logger and counter
increments are tallied for assertions.

Session identity and the state document location can be seeded from
EXPLAY_MOCK_* environment variables via FromEnv.
*/
package mockserver
