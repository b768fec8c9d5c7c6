// Package animj decodes AnimJ documents into anim.Animation values.
//
// An AnimJ document is a JSON (or YAML) object:
//
//	{
//	  "name": "walk",
//	  "globalDuration": 1.5,
//	  "tracks": [
//	    {
//	      "trackType": "Curve",
//	      "valueType": "float3",
//	      "data": {
//	        "node": "Hips",
//	        "property": "Position",
//	        "keyframes": [
//	          {"time": 0, "value": {"x": 0, "y": 1, "z": 0}, "interpolation": "Linear"}
//	        ]
//	      }
//	    }
//	  ]
//	}
//
// Track bodies may also be written flat on the track object instead of under
// "data". Unknown keys are ignored at every level.
//
// Decoding works on a generic tree of map[string]any, []any, strings, numbers,
// booleans and nil, as produced by ParseJSON or ParseYAML. Each track is read
// in two passes: its trackType and valueType tags are read first and select a
// typed decoder, which then reads the rest of the same object.
package animj
