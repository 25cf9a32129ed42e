/*
Package codec persists trees as structured documents.

XML is the primary format. A single-tree document has a <tree> root; a list is
wrapped in <population>. Each <tree> holds exactly one <node>; a node carries an
<action kind="..." conditional="..."/> and, for conditionals, a left and a right
child <node> tagged by role with an index hint (0 left, 1 right):

	<population>
	  <tree>
	    <node role="head" index="0">
	      <action kind="food_ahead" conditional="true"></action>
	      <node role="left" index="0">
	        <action kind="forward" conditional="false"></action>
	      </node>
	      <node role="right" index="1">
	        <action kind="pick_up" conditional="false"></action>
	      </node>
	    </node>
	  </tree>
	</population>

JSON and YAML carry the same node structure under a versioned document and are
selected by file extension in Save and Load. Saves are atomic.
*/
package codec
