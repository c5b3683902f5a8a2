// Package spice is the boundary to the external circuit simulator.
//
// A simulation is described by a Deck: the control script handed to the
// simulator, plus the data file its wrdata statements write. A Runner
// executes the deck and reports the data and log artifacts; ExecRunner is
// the production implementation shelling out to ngspice in batch mode.
// The package also parses the diagnostic log blocks the article pipeline
// consumes: Fourier analysis tables and stepped-temperature operating
// points.
//
// Downstream stages never look inside the simulator. They consume the
// data file through the trace package and the log through the parsers
// here.
package spice
