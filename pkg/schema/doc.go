// Package schema loads resource field definitions from JSON or YAML files and
// builds them into field sets. A definition file maps resource names to an
// ordered list of fields:
//
//	resources:
//	  post:
//	    fields:
//	      - title: Title
//	        type: text
//	        sortable: true
//	      - id: body
//	        type: textarea
//	        hideOn: [index]
//	        attributes:
//	          rows: 8
package schema
