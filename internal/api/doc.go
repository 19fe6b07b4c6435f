// Package api is the HTTP client for the OPCA backend. All calls share
// one request pipeline: an outbound interceptor chain that injects the
// stored bearer token and logs the request, and an inbound chain that
// logs the outcome and classifies failures into status, connectivity,
// and construction errors. Typed methods cover the auth, analysis,
// reference-data, model, user, and upload endpoint groups.
package api
