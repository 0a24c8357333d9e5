// Package commands defines the imagenn CLI.
//
// Commands
//
//   - modify-image  Overwrite colour channels of an image corner and save it
//   - train         Build a model from a preset or YAML config and fit it
//   - evaluate      Score stored weights on the test set
//   - predict       Classify test samples or image files with stored weights
//   - plot          Render learning curves from a history file
//   - summary       Print the layer table of a model
//   - preset        List the presets or print one as YAML
//
// # Data
//
// Commands reading data take --data, a directory with MNIST style IDX files
// (optionally gzipped). Without it a synthetic three class dataset is drawn, so
// every command works offline.
package commands
