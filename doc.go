/*
Package sdk provides the core entry point and runtime configuration for
building explay GameServices guest applications.

The package exposes New to register the inbound "deliver" entry point with
waPC and a RuntimeConfig that is shared by capability clients (e.g.,
gameservices, logging). DefaultNamespace is used when a namespace is not
explicitly provided.

The host cannot be called synchronously: every outbound operation is a
fire-and-forget host call, and the host answers later by invoking the
registered deliver function with a response envelope. See the gameservices
package for the request/response correlation layer built on top of these
primitives.
*/
package sdk
