// Package middleware groups the Fiber middleware used by the application:
// rayid assigns a correlation id to every request, auth enforces the
// optional API key.
package middleware
