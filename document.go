// Copyright 2015 Alex Browne and Soroush Pour.
// Allrights reserved. Use of this source code is
// governed by the MIT license, which can be found
// in the LICENSE file.

//go:build !js

package view

import "github.com/go-humble/view/v2/dom/headless"

// document is shared by every view created without WithDocument, so their
// elements can be attached to one another.
var document = headless.NewDocument()
