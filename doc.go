// Package auth implements the credential gate for the webshopd backend:
// local registration and password restoration, federated GitHub login,
// JWT issuance and validation, and a role-based authorization guard.
//
// The core is transport-agnostic. Verification strategies, the token
// service, and the session adapter depend only on the UserStore contract;
// the fiber boundary in http.go wires them into HTTP routes.
package auth
