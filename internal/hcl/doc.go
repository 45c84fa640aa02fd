// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for parsing `svgsprite.hcl` files and for the
// cty-to-Go conversion of the attributes that accept more than one shape
// (`include` takes a string or a list, `svgo` takes a bool or an object).
package hcl
