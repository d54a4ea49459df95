// Package html contains code relating specifically to the web UI.
package html
