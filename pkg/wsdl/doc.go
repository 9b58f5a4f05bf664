// Package wsdl holds the pure building blocks of WSDL discovery: URL
// classification, candidate reduction and the response content heuristic.
// Nothing in here performs I/O.
package wsdl
