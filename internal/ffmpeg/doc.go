// Package ffmpeg builds and executes the two-pass ffmpeg commands that turn
// a normalized frame sequence into an MP4.
//
// Pass 1 analyzes the sequence and writes rate-control statistics next to
// the frames (its media output goes to the null device); pass 2 consumes
// those statistics and produces the final file. Both passes share one
// argument skeleton built by [Build]; [CleanPassLogs] removes the side
// files afterwards.
package ffmpeg
