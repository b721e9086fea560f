// Package user contains the user aggregate of the directory: role-tagged
// accounts (dispatcher or receiver) referenced by id from orders.
package user
