// Package io decodes worldmap files into a [world.World] and exports worlds
// as JSON.
//
// # XML Format
//
// The native input is the worldmap XML format:
//
//	<world>
//	  <cell x="0" y="0">
//	    <feature>
//	      <geometry type="Polygon">
//	        <coordinates>
//	          <point x="0" y="0"/>
//	          <point x="300" y="0"/>
//	          <point x="300" y="300"/>
//	        </coordinates>
//	      </geometry>
//	      <properties>
//	        <property name="water" value="river"/>
//	      </properties>
//	    </feature>
//	  </cell>
//	</world>
//
// The root element name is not checked. Each <coordinates> element becomes
// one ring; point coordinates are cell-local integers.
//
// # JSON Format
//
// The JSON form mirrors the model one-to-one:
//
//	{"cells": [{"x": 0, "y": 0, "features": [
//	  {"geometry": {"type": "Point", "coordinates": [[{"x": 10, "y": 20}]]},
//	   "properties": [{"name": "name_en", "value": "Muldraugh"}]}
//	]}]}
//
// [WriteJSON] and [ExportJSON] produce it; the convert command uses them to
// turn large XML maps into JSON.
//
// # Geometry Tags
//
// "Point" and "Polygon" are drawn. "LineString" and any other tag decode to
// [world.KindUnsupported] with the raw tag preserved, so maps containing
// roads or rail lines still load. With [WithStrict], every geometry that
// would render nothing is rejected instead. A geometry with no type at all
// is always an error.
//
// # Errors
//
// Malformed input is reported as INVALID_INPUT; a missing file as
// FILE_NOT_FOUND; other read failures as IO_ERROR (see pkg/errors).
//
// [world.World]: github.com/matzehuels/worldsvg/pkg/world.World
// [world.KindUnsupported]: github.com/matzehuels/worldsvg/pkg/world.KindUnsupported
package io
