// Package clientip resolves the address of the device that sent a request.
//
// Devices on the gateway's LAN talk to the service directly, so by default
// the TCP peer address is the answer and forwarding headers are ignored:
// honouring them would let any client claim another device's address.
// Only when the peer is a configured trusted proxy are X-Forwarded-For and
// X-Real-IP consulted, and X-Forwarded-For is read right to left so that
// entries a client prepended cannot win.
//
//	res, err := clientip.NewResolver("10.0.0.0/8")
//	r.Use(clientip.Middleware(res))
//
//	ip := clientip.FromContext(ctx)
package clientip
