// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

//go:build js

package view

import "github.com/go-humble/view/v2/dom/browser"

var document = browser.NewDocument()
