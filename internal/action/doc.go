// Package action defines construction actions and the Warehouse that orders
// and executes them.
//
// An Action is bound to one input block and performs one construction step
// (for example "add the kernel described by Kernels/diff"). Actions are
// grouped into stages from a StageList; stages run in list order, and inside
// a stage the declared dependencies decide the order. Independent actions run
// in the order they were added, so two runs over the same input always
// execute the same sequence.
//
// The Warehouse moves through Collecting, Ordered, Executing and Done. The
// first failing action moves it to Failed and halts the build.
package action
