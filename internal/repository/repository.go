// Package repository talks to the document store.
//
// It owns the filter, update and projection documents for the businesses
// collection so services only deal with model types.
package repository
