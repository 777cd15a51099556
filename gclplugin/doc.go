/*
Package gclplugin registers the signcheck checks as a golangci-lint module plugin named "signcheck".

All checks share one sign analysis. The plugin accepts these settings:

	domain           "simple" or "precise"; the lattice the analysis runs in
	report-possible  whether values that may be negative or zero are reported,
	                 in addition to values that are known to be
	concurrency      the number of functions analyzed in parallel per package

Settings that are left out fall back to the nearest signcheck.conf, and then to the defaults (precise domain,
possible values reported, one worker per CPU). The checks also honor signcheck.conf's
checks list and //signcheck:ignore directives, as they do under the signcheck command.

A custom golangci-lint binary is built from a .custom-gcl.yaml listing

	plugins:
	  - module: github.com/signcheck/signcheck
	    import: github.com/signcheck/signcheck/gclplugin
	    version: v0.1.0

and the linter is enabled in .golangci.yaml as a module plugin:

	linters:
	  enable:
	    - signcheck
	  settings:
	    custom:
	      signcheck:
	        type: module
	        settings:
	          domain: simple
	          report-possible: false
*/
package gclplugin
