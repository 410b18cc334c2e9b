// Package view holds the display side of the task list: the rows of the
// visible list, the off-screen fragment they are built in, the state of the
// task form and its submit control, the styling presets and the HTML page.
//
// The controller owns one List and one Form and mutates them directly.
// Rows are never appended to a List one at a time; a render builds a
// complete Fragment and commits it in one step.
package view
