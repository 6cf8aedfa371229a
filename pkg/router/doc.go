// Package router moves newly created vault files to the directory chosen by
// the first matching rule.
//
// Files enter an intake queue when they are created and are processed when
// the vault is next modified, one at a time and strictly in creation order.
// Each file goes through a fixed pipeline:
//
//  1. existence check (the file may be gone by now)
//  2. rule resolution
//  3. destination directory preparation
//  4. file name rendering
//  5. collision check (existing files are never overwritten)
//  6. rename
//
// A failure at any step ends processing of that file only. A drain never
// aborts because of one file.
package router
