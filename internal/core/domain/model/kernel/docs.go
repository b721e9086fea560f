// Package kernel contains shared domain primitives used across aggregates.
// Currently this is the UUID value object that identifies users and orders.
package kernel
