// Package parakeet drives the parakeet-mlx speech model through uvx.
//
// Service.Load makes sure the weights are present in the Hugging Face hub
// cache, downloading them under a file lock so concurrent stt processes do
// not fetch the same snapshot twice. The returned Model shells out once per
// audio file and reads the JSON transcript parakeet-mlx writes into a
// scratch directory.
//
// Tests swap the process launcher with WithCommandRunner.
package parakeet
