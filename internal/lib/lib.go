// Package lib holds small libraries that do not belong to a single layer,
// such as request pagination.
package lib
