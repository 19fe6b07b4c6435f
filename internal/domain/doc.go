// Package domain defines the data types exchanged with the OPCA backend API:
// users and roles, analysis results, parasite and digit reference data,
// model versions, and the common response envelopes.
package domain
